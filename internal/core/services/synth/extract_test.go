package synth

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<!doctype html>
<html><head><title>Shop</title><style>h1 { color: red }</style><script>var x = "<button>fake</button>";</script></head>
<body>
  <header><h1 id="title">  Welcome   to the   shop </h1></header>
  <nav><a href="/cart" aria-label="Cart"></a><a href="/about">About us</a></nav>
  <main>
    <p>Fresh produce every day.</p>
    <p>   </p>
    <form action="/search" method="get">
      <label for="q">Search</label>
      <input id="q" name="q" placeholder="Search products">
      <input type="hidden" name="csrf" value="secret">
      <button type="submit" data-testid="search-btn">Go</button>
    </form>
    <div>not relevant</div>
  </main>
</body></html>`

func TestExtractElements_DocumentOrderAndShape(t *testing.T) {
	lines, err := extractElements(samplePage, 100)
	require.NoError(t, err)

	assert.Equal(t, []string{
		`<h1 id="title">Welcome to the shop</h1>`,
		`<a aria-label="Cart" href="/cart"></a>`,
		`<a href="/about">About us</a>`,
		`<p>Fresh produce every day.</p>`,
		`<form action="/search" method="get">`,
		`<label for="q">Search</label>`,
		`<input id="q" name="q" placeholder="Search products">`,
		`<button type="submit" data-testid="search-btn">Go</button>`,
	}, lines)
}

func TestExtractElements_CapsCount(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 250; i++ {
		fmt.Fprintf(&b, "<p>paragraph %d</p>", i)
	}
	b.WriteString("</body></html>")

	lines, err := extractElements(b.String(), 100)
	require.NoError(t, err)
	require.Len(t, lines, 100)
	assert.Equal(t, "<p>paragraph 0</p>", lines[0])
	assert.Equal(t, "<p>paragraph 99</p>", lines[99])
}

func TestExtractElements_EscapesAndShortens(t *testing.T) {
	long := strings.Repeat("word ", 40)
	lines, err := extractElements(`<p title='a"b'>`+long+`</p><h2>&lt;tag&gt;</h2>`, 10)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `title="a&#34;b"`)
	assert.Contains(t, lines[0], "…</p>")
	assert.Equal(t, "<h2>&lt;tag&gt;</h2>", lines[1])
}

func TestSnapshot_FallsBackToTruncatedHTML(t *testing.T) {
	page := "<html><body><div>" + strings.Repeat("é", 100) + "</div></body></html>"

	got := Snapshot(page, 100, 40)
	assert.LessOrEqual(t, len(got), 40)
	assert.True(t, strings.HasPrefix(page, got))
	assert.True(t, strings.HasPrefix(got, "<html><body><div>"))
	assert.NotContains(t, got, "�")
}

func TestSnapshot_UsesElements(t *testing.T) {
	got := Snapshot(samplePage, 2, 10000)
	assert.Equal(t, "<h1 id=\"title\">Welcome to the shop</h1>\n<a aria-label=\"Cart\" href=\"/cart\"></a>", got)
}
