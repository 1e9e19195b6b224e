package reconcile

import "md-table-sync/core/table"

// Index maps role keys to source rows.
type Index struct {
	keyIndex   int
	rows       map[string]*table.Row
	duplicates []string
}

// ResolveKeyColumn returns the position of the key column name in t.
// An empty name selects column 0.
func ResolveKeyColumn(t *table.Table, side Side, name string) (int, error) {
	if name == "" {
		return 0, nil
	}
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return -1, &KeyColumnError{Side: side, Column: name}
	}
	return idx, nil
}

// RowKey returns the trimmed plain text of the key cell of row.
func RowKey(row *table.Row, keyIndex int) (string, bool) {
	cell, ok := row.Cell(keyIndex)
	if !ok {
		return "", false
	}
	return cell.Text(), true
}

// BuildIndex indexes the data rows of src by keyColumn.
// Rows are visited in document order; when a key repeats, the first row is kept.
// Rows without a key cell are not indexed.
func BuildIndex(src *table.Table, keyColumn string) (*Index, error) {
	keyIndex, err := ResolveKeyColumn(src, SideSource, keyColumn)
	if err != nil {
		return nil, err
	}

	ix := &Index{
		keyIndex: keyIndex,
		rows:     make(map[string]*table.Row, len(src.Rows)),
	}
	for _, row := range src.Rows {
		key, ok := RowKey(row, keyIndex)
		if !ok {
			continue
		}
		if _, exists := ix.rows[key]; exists {
			ix.duplicates = append(ix.duplicates, key)
			continue
		}
		ix.rows[key] = row
	}
	return ix, nil
}

// KeyIndex returns the source key column position.
func (ix *Index) KeyIndex() int {
	return ix.keyIndex
}

// Len returns the number of distinct keys.
func (ix *Index) Len() int {
	return len(ix.rows)
}

// Duplicates returns the keys of ignored source rows, in document order.
func (ix *Index) Duplicates() []string {
	return ix.duplicates
}

// Lookup returns the source row for key. The comparison is exact.
func (ix *Index) Lookup(key string) (*table.Row, bool) {
	row, ok := ix.rows[key]
	return row, ok
}

// Match returns the source row sharing the key of target, read at keyIndex.
func (ix *Index) Match(target *table.Row, keyIndex int) (*table.Row, bool) {
	key, ok := RowKey(target, keyIndex)
	if !ok {
		return nil, false
	}
	return ix.Lookup(key)
}
