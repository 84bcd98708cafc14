package output

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainWhenNotTerminal(t *testing.T) {
	var out, errOut bytes.Buffer
	p := New(&out, &errOut)

	d := "--- a/x.js\n+++ b/x.js\n@@ -1,1 +1,1 @@\n-a\n+b\n"
	p.Diff(d)
	p.Print("done\n")
	p.Errorf("reading %s: %v", "x.js", os.ErrNotExist)
	p.Notice("x.js")

	assert.Equal(t, d+"done\n", out.String())
	assert.Equal(t, "splicefmt: reading x.js: file does not exist\nx.js\n", errOut.String())
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))

	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	assert.False(t, IsTerminal(f))
}
