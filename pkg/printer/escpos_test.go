package printer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyValueRightAlignsValue(t *testing.T) {
	doc := NewDocument(32)
	doc.KeyValue("Total:", "5.40")

	line := strings.Split(string(doc.Bytes()), "\n")[0]
	line = strings.TrimPrefix(line, string([]byte{ESC, '@'}))
	assert.Equal(t, 32, len(line))
	assert.True(t, strings.HasPrefix(line, "Total:"))
	assert.True(t, strings.HasSuffix(line, "5.40"))
}

func TestItemLineFractionalQuantity(t *testing.T) {
	doc := NewDocument(32)
	doc.ItemLine(0.5, "Rice (kg)", "1.20")

	out := string(doc.Bytes())
	assert.Contains(t, out, "0.5x Rice (kg)")
	assert.Contains(t, out, "1.20")
}

func TestItemLineKeepsOneSpaceWhenTooLong(t *testing.T) {
	doc := NewDocument(16)
	doc.ItemLine(2, "A very long product name", "10.00")

	out := string(doc.Bytes())
	assert.Contains(t, out, "2x A very long product name 10.00")
}

func TestSeparatorFillsWidth(t *testing.T) {
	doc := NewDocument(32)
	doc.Separator('-')

	out := string(doc.Bytes())
	assert.Contains(t, out, strings.Repeat("-", 32))
}

func TestPartialCutAppendsCommand(t *testing.T) {
	doc := NewDocument(32)
	doc.Text("done").PartialCut()

	out := doc.Bytes()
	assert.Equal(t, byte(GS), out[len(out)-3])
	assert.Equal(t, byte('V'), out[len(out)-2])
	assert.Equal(t, byte(0x01), out[len(out)-1])
}
