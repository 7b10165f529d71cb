package dashboard

import (
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/psidex/flowmap/internal/commuting"
	"github.com/psidex/flowmap/internal/flowgraph"
)

const description = `<p>The map shows the <b>commuting flows</b> between the selected region and
the rest of Italy, from the 2011 census origin/destination matrix.</p>
<p><span class="incoming">Blue</span> lines are commuters coming into the region,
<span class="outgoing">orange</span> lines are commuters leaving it. Line width grows
with the number of commuters. Hover a line for the exact count.</p>`

const stylesheet = `body { font-family: sans-serif; margin: 1em; }
form { display: flex; gap: 2em; align-items: center; }
.indicators { display: flex; gap: 1em; margin: 1em 0; }
.indicator { border: 1px solid #2f4f4f; padding: 0.5em 1em; min-width: 10em; }
.indicator .value { font-size: 1.6em; display: block; }
.incoming { color: rgb(0, 108, 151); }
.outgoing { color: rgb(199, 81, 51); }
iframe { border: none; width: 100%; height: 1150px; }`

// script keeps the page in sync with the /ws session: every selection change is
// sent as a message and the reply updates the indicators and the chart frame.
const script = `const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
const form = document.getElementById("selection");

function selection() {
  const data = new FormData(form);
  return { region: parseInt(data.get("region"), 10), purpose: data.get("purpose") };
}

form.addEventListener("change", () => ws.send(JSON.stringify(selection())));

ws.onmessage = (event) => {
  const msg = JSON.parse(event.data);
  if (msg.type === "error") {
    document.getElementById("status").textContent = msg.data.message;
    return;
  }
  document.getElementById("status").textContent = "";
  for (const k of ["incoming", "outgoing", "internal"]) {
    document.getElementById(k).textContent = msg.data.indicators[k].toLocaleString();
  }
  const s = selection();
  document.getElementById("chart").src = "/chart?region=" + s.region + "&purpose=" + encodeURIComponent(s.purpose);
};`

func element(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func appendChildren(parent *html.Node, children ...*html.Node) *html.Node {
	for _, c := range children {
		parent.AppendChild(c)
	}
	return parent
}

// elementByID returns the first element in the tree under n with the given id.
func elementByID(n *html.Node, id string) *html.Node {
	var found *html.Node

	var visitNode func(*html.Node)
	visitNode = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode {
			for _, attr := range n.Attr {
				if attr.Key == "id" && attr.Val == id {
					found = n
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visitNode(c)
		}
	}

	visitNode(n)

	return found
}

func chartURL(region commuting.Region, purpose commuting.Purpose) string {
	return "/chart?region=" + strconv.Itoa(int(region)) + "&purpose=" + purpose.Label()
}

func regionSelect(selected commuting.Region) *html.Node {
	sel := element(atom.Select, "id", "region", "name", "region")
	for _, r := range commuting.RegionsByName() {
		opt := element(atom.Option, "value", strconv.Itoa(int(r)))
		if r == selected {
			opt.Attr = append(opt.Attr, html.Attribute{Key: "selected"})
		}
		appendChildren(sel, appendChildren(opt, text(r.Name())))
	}
	return appendChildren(element(atom.Label), text("Region "), sel)
}

func purposeRadios(selected commuting.Purpose) *html.Node {
	fieldset := appendChildren(element(atom.Fieldset), appendChildren(element(atom.Legend), text("Purpose")))
	for _, p := range commuting.Purposes {
		input := element(atom.Input, "type", "radio", "name", "purpose", "value", p.Label())
		if p == selected {
			input.Attr = append(input.Attr, html.Attribute{Key: "checked"})
		}
		appendChildren(fieldset, appendChildren(element(atom.Label), input, text(" "+p.Label())))
	}
	return fieldset
}

func indicatorBox(id, label, class string) *html.Node {
	return appendChildren(element(atom.Div, "class", "indicator "+class),
		appendChildren(element(atom.Span, "class", "value", "id", id), text("0")),
		text(label),
	)
}

func descriptionPanel() (*html.Node, error) {
	panel := element(atom.Div, "id", "description")
	nodes, err := html.ParseFragment(strings.NewReader(description), panel)
	if err != nil {
		return nil, err
	}
	return appendChildren(panel, nodes...), nil
}

// page builds the dashboard shell for a selection, with the indicators of v
// already filled in.
func page(title string, v *flowgraph.View) (*html.Node, error) {
	g := v.Graph

	desc, err := descriptionPanel()
	if err != nil {
		return nil, err
	}

	head := appendChildren(element(atom.Head),
		element(atom.Meta, "charset", "UTF-8"),
		appendChildren(element(atom.Title), text(title)),
		appendChildren(element(atom.Style), text(stylesheet)),
	)

	body := appendChildren(element(atom.Body),
		appendChildren(element(atom.H1), text(title)),
		appendChildren(element(atom.Form, "id", "selection"), regionSelect(g.Anchor), purposeRadios(g.Purpose)),
		appendChildren(element(atom.Div, "class", "indicators"),
			indicatorBox("incoming", "Incoming commuters", "incoming"),
			indicatorBox("outgoing", "Outgoing commuters", "outgoing"),
			indicatorBox("internal", "Internal mobility", "internal"),
		),
		appendChildren(element(atom.P, "id", "status")),
		desc,
		element(atom.Iframe, "id", "chart", "src", chartURL(g.Anchor, g.Purpose)),
		appendChildren(element(atom.Script), text(script)),
	)

	doc := &html.Node{Type: html.DocumentNode}
	appendChildren(doc,
		&html.Node{Type: html.DoctypeNode, Data: "html"},
		appendChildren(element(atom.Html, "lang", "en"), head, body),
	)

	for id, value := range map[string]uint64{
		"incoming": v.Indicators.Incoming,
		"outgoing": v.Indicators.Outgoing,
		"internal": v.Indicators.Internal,
	} {
		if n := elementByID(doc, id); n != nil {
			n.FirstChild.Data = strconv.FormatUint(value, 10)
		}
	}

	return doc, nil
}

func renderPage(w io.Writer, title string, v *flowgraph.View) error {
	doc, err := page(title, v)
	if err != nil {
		return err
	}
	return html.Render(w, doc)
}
