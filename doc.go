/*
Package fil reads and writes structured data files, picking the codec from
each file's extension so callers never name a format in code.

	v, err := fil.Read("config.yaml")
	...
	err = fil.Write("config.toml", v)

Supported formats are JSON (.json), JSON Lines (.jsonl, .jsonlines, .jl),
TOML (.toml), YAML (.yaml, .yml), INI (.ini), MessagePack (.msgpack) and
plain text (.txt). A trailing compression extension layers transparent
compression over any of them: .gz/.gzip, .zst/.zstd, .bz2/.bz and .xz, as in
events.jsonl.gz.

Decoded values use the generic Go shapes of each underlying decoder: maps,
slices, strings, bools, nil, and float64 or int64 for numbers. With the
Ordered option, objects decode into *orderedmap.OrderedMap instead of plain
maps, so key order survives a read-modify-write round trip.

JSON Lines files never load whole. Read returns a *Lines that decodes one
record per Next call, and Write accepts slices, iterators and *Lines itself,
encoding record by record:

	lines, err := fil.ReadLines("big.jsonl.gz")
	...
	defer lines.Close()
	for lines.Next() {
		process(lines.Value())
	}
	err = lines.Err()

Writes are atomic by default: content goes to a temporary file next to the
destination and is renamed into place only after a complete write, so a
crash or encode failure never leaves a half-written or truncated file. The
NoAtomic option trades that for in-place streaming.
*/
package fil
