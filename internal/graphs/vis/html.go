package vis

// The two verbs are the escaped page title and the JSON array of nodes and edges.
var page = `<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="UTF-8">
    <title>%s</title>
    <style>
        * {
            margin: 0;
        }
        #flowmap {
            width: 100vw;
            height: 100vh;
        }
    </style>
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <script type="text/javascript"
      src="https://unpkg.com/vis-network/standalone/umd/vis-network.min.js"></script>
  </head>
  <body>
    <div id="flowmap"></div>
    <script type="text/javascript">
let nodesAndEdges = %s;

var container = document.getElementById("flowmap");

var data = {
  nodes: [],
  edges: [],
};

var options = {
  physics: {
    enabled: false,
  },
  interaction: {
    hover: true,
  },
  nodes: {
    fixed: true,
    borderWidth: 1.5,
  },
  edges: {
    arrows: { to: { enabled: false } },
    smooth: { enabled: false },
    // Edges only carry the hover title, the curves are drawn below.
    color: { color: 'rgba(0, 0, 0, 0)', hover: 'rgba(0, 0, 0, 0)', highlight: 'rgba(0, 0, 0, 0)' },
  },
};
var network = new vis.Network(container, data, options);

// Sampled curve points of every edge added so far, in replay order.
let curves = [];

network.on("beforeDrawing", function (ctx) {
    for (const c of curves) {
        ctx.beginPath();
        ctx.moveTo(c.points[0][0], c.points[0][1]);
        for (let i = 1; i < c.points.length; i++) {
            ctx.lineTo(c.points[i][0], c.points[i][1]);
        }
        ctx.strokeStyle = c.color;
        ctx.lineWidth = c.width;
        ctx.stroke();
    }
});

let index = 0;

// Edges arrive lightest first, so the heaviest flows end up on top.
function addItem() {
    if (index < nodesAndEdges.length) {
        const item = nodesAndEdges[index];
        const dataType = item.type;

        if (dataType === "node") {
            network.body.data.nodes.add(item.data);
        } else if (dataType === "edge") {
            curves.push({ points: item.curve, color: item.color, width: item.data.width });
            network.body.data.edges.add(item.data);
        }

        index++;
        setTimeout(addItem, 20); // milliseconds
    } else {
        network.fit();
    }
}

addItem();
        </script>
  </body>
</html>`
