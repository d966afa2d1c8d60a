package fil_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thirteen37/fil"
)

func writeLinesFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadLines_Streams(t *testing.T) {
	path := writeLinesFile(t, "events.jsonl", `{"id": 1}
{"id": 2}
{"id": 3}
`)

	lines, err := fil.ReadLines(path)
	require.NoError(t, err)
	defer lines.Close()

	var ids []float64
	for lines.Next() {
		record, ok := lines.Value().(map[string]any)
		require.True(t, ok, "Value() = %T", lines.Value())
		ids = append(ids, record["id"].(float64))
	}
	require.NoError(t, lines.Err())
	assert.Equal(t, []float64{1, 2, 3}, ids)
}

func TestReadLines_SkipsBlankLines(t *testing.T) {
	path := writeLinesFile(t, "gaps.jsonl", "{\"id\": 1}\n \t \n{\"id\": 2}\n\n{\"id\": 3}\n")

	lines, err := fil.ReadLines(path)
	require.NoError(t, err)
	defer lines.Close()

	type rec struct {
		id   float64
		line int
	}
	var got []rec
	for lines.Next() {
		record := lines.Value().(map[string]any)
		got = append(got, rec{record["id"].(float64), lines.Line()})
	}
	require.NoError(t, lines.Err())

	// Blank lines are skipped but still counted, so Line matches the file
	assert.Equal(t, []rec{{1, 1}, {2, 3}, {3, 5}}, got)
}

func TestReadLines_NoTrailingNewline(t *testing.T) {
	path := writeLinesFile(t, "events.jsonl", "{\"id\": 1}\n{\"id\": 2}")

	lines, err := fil.ReadLines(path)
	require.NoError(t, err)
	defer lines.Close()

	var count int
	for lines.Next() {
		count++
	}
	require.NoError(t, lines.Err())
	assert.Equal(t, 2, count)
}

func TestReadLines_MalformedLineSurfacesLate(t *testing.T) {
	path := writeLinesFile(t, "events.jsonl", "{\"id\": 1}\n{\"id\": 2}\n{broken\n{\"id\": 4}\n")

	// Opening succeeds; the malformed line is not reached yet
	lines, err := fil.ReadLines(path)
	require.NoError(t, err)
	defer lines.Close()

	require.True(t, lines.Next())
	require.True(t, lines.Next())
	require.False(t, lines.Next())

	var decErr *fil.DecodeError
	require.ErrorAs(t, lines.Err(), &decErr)
	assert.Equal(t, path, decErr.Path)
	assert.Equal(t, "jsonl", decErr.Format)
	assert.Equal(t, 3, decErr.Line)

	// The iteration stays stopped
	assert.False(t, lines.Next())
}

func TestReadLines_EarlyClose(t *testing.T) {
	path := writeLinesFile(t, "events.jsonl", "{\"id\": 1}\n{\"id\": 2}\n")

	lines, err := fil.ReadLines(path)
	require.NoError(t, err)

	require.True(t, lines.Next())
	require.NoError(t, lines.Close())

	assert.False(t, lines.Next())
	assert.NoError(t, lines.Err())
	require.NoError(t, lines.Close())
}

func TestReadLines_EmptyFile(t *testing.T) {
	path := writeLinesFile(t, "empty.jsonl", "")

	lines, err := fil.ReadLines(path)
	require.NoError(t, err)
	defer lines.Close()

	assert.False(t, lines.Next())
	assert.NoError(t, lines.Err())
	assert.Zero(t, lines.Line())
}

func TestReadLines_All(t *testing.T) {
	path := writeLinesFile(t, "events.jsonl", "{\"id\": 1}\n{\"id\": 2}\n")

	lines, err := fil.ReadLines(path)
	require.NoError(t, err)
	defer lines.Close()

	var ids []float64
	for record, err := range lines.All() {
		require.NoError(t, err)
		ids = append(ids, record.(map[string]any)["id"].(float64))
	}
	assert.Equal(t, []float64{1, 2}, ids)
}

func TestReadLines_AllYieldsTerminalError(t *testing.T) {
	path := writeLinesFile(t, "events.jsonl", "{\"id\": 1}\n{broken\n")

	lines, err := fil.ReadLines(path)
	require.NoError(t, err)
	defer lines.Close()

	var records []any
	var lastErr error
	for record, err := range lines.All() {
		if err != nil {
			lastErr = err
			break
		}
		records = append(records, record)
	}
	assert.Len(t, records, 1)
	var decErr *fil.DecodeError
	require.ErrorAs(t, lastErr, &decErr)
	assert.Equal(t, 2, decErr.Line)
}

func TestReadLines_Compressed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl.gz")
	require.NoError(t, fil.Write(path, []any{
		map[string]any{"id": float64(1)},
		map[string]any{"id": float64(2)},
	}))

	lines, err := fil.ReadLines(path)
	require.NoError(t, err)
	defer lines.Close()

	var ids []float64
	for lines.Next() {
		ids = append(ids, lines.Value().(map[string]any)["id"].(float64))
	}
	require.NoError(t, lines.Err())
	assert.Equal(t, []float64{1, 2}, ids)
}

func TestReadLines_WholeDocumentFormat(t *testing.T) {
	path := writeLinesFile(t, "data.json", `{"a": 1}`)

	_, err := fil.ReadLines(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a line-oriented format")
}

func TestRead_LineOrientedReturnsLines(t *testing.T) {
	path := writeLinesFile(t, "events.jsonl", "{\"id\": 1}\n")

	got, err := fil.Read(path)
	require.NoError(t, err)

	lines, ok := got.(*fil.Lines)
	require.True(t, ok, "Read() on .jsonl = %T, want *fil.Lines", got)
	defer lines.Close()

	require.True(t, lines.Next())
	assert.Equal(t, map[string]any{"id": float64(1)}, lines.Value())
}

func TestReadLines_Ordered(t *testing.T) {
	path := writeLinesFile(t, "events.jsonl", "{\"zebra\": 1, \"apple\": 2}\n")

	lines, err := fil.ReadLines(path, fil.Ordered())
	require.NoError(t, err)
	defer lines.Close()

	require.True(t, lines.Next())
	om, ok := lines.Value().(interface{ Keys() []string })
	require.True(t, ok, "Value() = %T", lines.Value())
	assert.Equal(t, []string{"zebra", "apple"}, om.Keys())
}

func TestReadLines_LongLine(t *testing.T) {
	long := strings.Repeat("x", 100_000)
	path := writeLinesFile(t, "big.jsonl", fmt.Sprintf("{\"blob\": %q}\n", long))

	lines, err := fil.ReadLines(path)
	require.NoError(t, err)
	defer lines.Close()

	require.True(t, lines.Next())
	assert.Equal(t, long, lines.Value().(map[string]any)["blob"])
	require.NoError(t, lines.Err())
}
