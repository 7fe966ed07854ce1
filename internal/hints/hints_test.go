package hints

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHints = `# Patterns map raw bank labels to canonical accounts.
expense.groceries =
	WHOLEFDS
	TRADER JOE

expense.utilities=
	CITY OF AUSTIN
asset.checking =
	SCHWAB BANK
`

func TestLoad_Patterns(t *testing.T) {
	table := NewTable()
	require.NoError(t, table.Load(strings.NewReader(sampleHints)))

	assert.Equal(t, 4, table.Len())
	assert.Equal(t, "expense.groceries", table.Suggest("WHOLEFDS"))
	assert.Equal(t, "expense.groceries", table.Suggest("TRADER JOE"))
	assert.Equal(t, "expense.utilities", table.Suggest("CITY OF AUSTIN"))
	assert.Equal(t, "asset.checking", table.Suggest("SCHWAB BANK"))
}

func TestSuggest_Substring(t *testing.T) {
	table := NewTable()
	require.NoError(t, table.Load(strings.NewReader(sampleHints)))

	// The raw label carries noise around the known pattern.
	assert.Equal(t, "expense.groceries", table.Suggest("WHOLEFDS 10232 AUSTIN TX"))
	assert.Equal(t, "expense.utilities", table.Suggest("ACH CITY OF AUSTIN UTIL"))
}

func TestSuggest_FirstRegisteredWins(t *testing.T) {
	table := NewTable()
	table.Add("STORE", "expense.groceries")
	table.Add("STORE 42", "expense.hardware")

	// Both patterns are substrings; registration order breaks the tie.
	assert.Equal(t, "expense.groceries", table.Suggest("STORE 42 MAIN ST"))
}

func TestSuggest_ExactBeatsSubstring(t *testing.T) {
	table := NewTable()
	table.Add("STORE", "expense.groceries")
	table.Add("STORE 42", "expense.hardware")

	assert.Equal(t, "expense.hardware", table.Suggest("STORE 42"))
}

func TestSuggest_Unknown(t *testing.T) {
	table := NewTable()
	assert.Equal(t, "", table.Suggest("MYSTERY VENDOR"))
}

func TestAdd_ReRegisterKeepsPosition(t *testing.T) {
	table := NewTable()
	table.Add("STORE", "expense.groceries")
	table.Add("OTHER", "expense.misc")
	table.Add("STORE", "expense.hardware")

	assert.Equal(t, 2, table.Len())
	assert.Equal(t, "expense.hardware", table.Suggest("STORE AND MORE"))
}

func TestParseColonConf_Continuations(t *testing.T) {
	doc := `key.one = first
	second line
	third: has a colon

# a comment
key.two =
	only
`
	order, values, err := parseColonConf(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, []string{"key.one", "key.two"}, order)
	assert.Equal(t, "first\nsecond line\nthird: has a colon", values["key.one"])
	assert.Equal(t, "only", values["key.two"])
}

func TestLoadFile_Missing(t *testing.T) {
	table := NewTable()
	require.Error(t, table.LoadFile("/nonexistent/hints.conf"))
}
