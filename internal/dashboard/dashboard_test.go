package dashboard

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/psidex/flowmap/internal/commuting"
	"github.com/psidex/flowmap/internal/flowgraph"
)

func sampleTables() *commuting.Tables {
	return &commuting.Tables{
		Edges: []commuting.EdgeRecord{
			{Purpose: commuting.Work, Internal: true, Flow: 1_500_000, Origin: 12, Destination: 12},
			{Purpose: commuting.Work, Flow: 3_000, Origin: 12, Destination: 9},
			{Purpose: commuting.Study, Flow: 800, Origin: 12, Destination: 9},
			{Purpose: commuting.Work, Flow: 2_500, Origin: 9, Destination: 12},
			{Purpose: commuting.Work, Flow: 9_000, Origin: 10, Destination: 12},
		},
		Nodes: []commuting.NodeRecord{
			{Code: 9, X: 0, Y: 10},
			{Code: 10, X: 10, Y: 10},
			{Code: 12, X: 10, Y: 0},
		},
	}
}

func newTestServer(t *testing.T, idle time.Duration) *httptest.Server {
	t.Helper()
	s := NewServer(sampleTables(), Options{
		Style:          flowgraph.DefaultStyle(),
		DefaultRegion:  12,
		DefaultPurpose: commuting.Work,
		IdleTimeout:    idle,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(b)
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func TestIndex(t *testing.T) {
	srv := newTestServer(t, 0)

	resp, body := get(t, srv.URL+"/?region=9")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	doc, err := html.Parse(strings.NewReader(body))
	require.NoError(t, err)

	sel := elementByID(doc, "region")
	require.NotNil(t, sel)
	var options, selected []string
	for c := sel.FirstChild; c != nil; c = c.NextSibling {
		options = append(options, c.FirstChild.Data)
		if _, ok := attr(c, "selected"); ok {
			selected = append(selected, c.FirstChild.Data)
		}
	}
	assert.Len(t, options, 20)
	assert.Equal(t, "Abruzzo", options[0])
	assert.Equal(t, []string{"Toscana"}, selected)

	// Toscana: 12>9 is outgoing from Lazio, incoming for Toscana.
	assert.Equal(t, "3000", elementByID(doc, "incoming").FirstChild.Data)
	assert.Equal(t, "2500", elementByID(doc, "outgoing").FirstChild.Data)

	chart := elementByID(doc, "chart")
	require.NotNil(t, chart)
	src, _ := attr(chart, "src")
	assert.Equal(t, "/chart?region=9&purpose=Work", src)

	desc := elementByID(doc, "description")
	require.NotNil(t, desc)
	assert.Equal(t, "p", desc.FirstChild.Data)
}

func TestIndex_NotFound(t *testing.T) {
	srv := newTestServer(t, 0)
	resp, _ := get(t, srv.URL+"/favicon.ico")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestChart(t *testing.T) {
	srv := newTestServer(t, 0)

	resp, body := get(t, srv.URL+"/chart?region=12&purpose=Work")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, body, flowgraph.IncomingColor)
	assert.Contains(t, body, "Umbria")
}

func TestFlows(t *testing.T) {
	srv := newTestServer(t, 0)

	resp, body := get(t, srv.URL+"/api/flows?purpose=Lavoro")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var v flowgraph.View
	require.NoError(t, json.Unmarshal([]byte(body), &v))
	assert.Equal(t, uint64(11_500), v.Indicators.Incoming)
	assert.Equal(t, uint64(3_000), v.Indicators.Outgoing)
	assert.Equal(t, uint64(1_500_000), v.Indicators.Internal)
	assert.Len(t, v.Graph.Edges, 3)
}

func TestFlows_BadSelection(t *testing.T) {
	srv := newTestServer(t, 0)

	for _, q := range []string{"region=99", "region=lazio", "purpose=Leisure"} {
		resp, _ := get(t, srv.URL+"/api/flows?"+q)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
	}
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	c, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

type testReply struct {
	Type    string          `json:"type"`
	Data    json.RawMessage `json:"data"`
	Elapsed string          `json:"elapsed"`
}

func TestSession(t *testing.T) {
	c := dial(t, newTestServer(t, 0))

	require.NoError(t, c.WriteJSON(SelectionMessage{Region: 12, Purpose: "Study"}))
	var r testReply
	require.NoError(t, c.ReadJSON(&r))
	assert.Equal(t, "flowgraph", r.Type)
	assert.NotEmpty(t, r.Elapsed)

	var v flowgraph.View
	require.NoError(t, json.Unmarshal(r.Data, &v))
	assert.Equal(t, uint64(800), v.Indicators.Outgoing)
	require.Len(t, v.Graph.Edges, 1)
	assert.Equal(t, "Toscana", v.Graph.Edges[0].DestinationName)

	// The session survives bad messages.
	require.NoError(t, c.WriteJSON(SelectionMessage{Region: 42, Purpose: "Work"}))
	require.NoError(t, c.ReadJSON(&r))
	assert.Equal(t, "error", r.Type)
	var e errorData
	require.NoError(t, json.Unmarshal(r.Data, &e))
	assert.Contains(t, e.Message, "unknown region")

	require.NoError(t, c.WriteMessage(websocket.TextMessage, []byte("not json")))
	require.NoError(t, c.ReadJSON(&r))
	assert.Equal(t, "error", r.Type)

	require.NoError(t, c.WriteJSON(SelectionMessage{Region: 9, Purpose: "Total"}))
	require.NoError(t, c.ReadJSON(&r))
	assert.Equal(t, "flowgraph", r.Type)
}

func TestSession_IdleTimeout(t *testing.T) {
	c := dial(t, newTestServer(t, 50*time.Millisecond))
	require.NoError(t, c.SetReadDeadline(time.Now().Add(5*time.Second)))

	_, _, err := c.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), err.Error())
}
