package storefront

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/lumaqa/lumacheck/internal/fixtures"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const (
	seedEmail    = "jane.doe@example.com"
	seedPassword = "Secret-Pass1"
)

// testSite is a running storefront with a cookie-keeping client
type testSite struct {
	t      *testing.T
	server *httptest.Server
	client *http.Client
	site   *Server
}

func newTestSite(t *testing.T) *testSite {
	t.Helper()

	site, err := New(fixtures.MustLoad(), WithCustomer(Customer{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     seedEmail,
		Password:  seedPassword,
	}))
	require.NoError(t, err)

	server := httptest.NewServer(site)
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar}

	t.Cleanup(func() {
		client.CloseIdleConnections()
		server.Close()
	})
	return &testSite{t: t, server: server, client: client, site: site}
}

// fetched is a parsed response
type fetched struct {
	status int
	url    *url.URL
	body   string
	doc    *html.Node
}

func (s *testSite) finish(resp *http.Response, err error) fetched {
	s.t.Helper()
	require.NoError(s.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	doc, err := html.Parse(strings.NewReader(string(raw)))
	require.NoError(s.t, err)
	return fetched{status: resp.StatusCode, url: resp.Request.URL, body: string(raw), doc: doc}
}

func (s *testSite) get(path string) fetched {
	s.t.Helper()
	return s.finish(s.client.Get(s.server.URL + path))
}

// post submits a form. The referer lets handlers return to the previous page.
func (s *testSite) post(path string, form url.Values, referer string) fetched {
	s.t.Helper()
	req, err := http.NewRequest(http.MethodPost, s.server.URL+path, strings.NewReader(form.Encode()))
	require.NoError(s.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if referer != "" {
		req.Header.Set("Referer", s.server.URL+referer)
	}
	return s.finish(s.client.Do(req))
}

var compoundPattern = regexp.MustCompile(`^([a-z0-9]*)((?:[#.][\w-]+)*)(?:\[([\w-]+)(?:="([^"]*)")?\])?$`)

// matcher is a compound CSS selector: tag, id, classes and one attribute
type matcher struct {
	tag     string
	id      string
	classes []string
	attr    string
	value   *string
}

func parseCompound(t *testing.T, sel string) matcher {
	t.Helper()
	m := compoundPattern.FindStringSubmatch(sel)
	require.NotNil(t, m, "unsupported selector %q", sel)

	out := matcher{tag: m[1], attr: m[3]}
	for _, part := range regexp.MustCompile(`[#.][\w-]+`).FindAllString(m[2], -1) {
		if part[0] == '#' {
			out.id = part[1:]
		} else {
			out.classes = append(out.classes, part[1:])
		}
	}
	if strings.Contains(sel, "=\"") {
		v := m[4]
		out.value = &v
	}
	return out
}

func attrOf(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func (m matcher) matches(n *html.Node) bool {
	if n.Type != html.ElementNode || (m.tag != "" && n.Data != m.tag) {
		return false
	}
	if m.id != "" {
		if id, _ := attrOf(n, "id"); id != m.id {
			return false
		}
	}
	class, _ := attrOf(n, "class")
	fields := strings.Fields(class)
	for _, c := range m.classes {
		found := false
		for _, f := range fields {
			if f == c {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if m.attr != "" {
		v, ok := attrOf(n, m.attr)
		if !ok || (m.value != nil && v != *m.value) {
			return false
		}
	}
	return true
}

// query returns every node matching a descendant selector such as
// "#shopping-cart-table .cart.item".
func query(t *testing.T, root *html.Node, selector string) []*html.Node {
	t.Helper()
	scopes := []*html.Node{root}
	for _, part := range strings.Fields(selector) {
		m := parseCompound(t, part)
		var next []*html.Node
		seen := make(map[*html.Node]bool)
		for _, scope := range scopes {
			walk(scope, func(n *html.Node) {
				if n != scope && m.matches(n) && !seen[n] {
					seen[n] = true
					next = append(next, n)
				}
			})
		}
		scopes = next
	}
	return scopes
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func textOf(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	})
	return strings.Join(strings.Fields(b.String()), " ")
}

func requireSelector(t *testing.T, doc *html.Node, selector string) []*html.Node {
	t.Helper()
	nodes := query(t, doc, selector)
	require.NotEmpty(t, nodes, "expected %q on page", selector)
	return nodes
}
