package core

import "fmt"

// ValidateRow checks required-value presence and casts each cell to its
// schema type, walking columns in schema order. It short-circuits at the
// first failing column: the row is rejected whole, remaining columns
// unchecked. Rows that pass every column come back as an immutable typed Row.
func ValidateRow(line int, raw []string, m *ColumnMapping) (Row, *RejectedRow) {
	row := make(Row, len(m.schema.Columns))

	for _, col := range m.schema.Columns {
		header := m.Header(col.Name)

		cell, ok := m.cell(raw, col.Name)
		if !ok || cell == "" {
			return nil, &RejectedRow{
				Line:   line,
				Data:   raw,
				Reason: fmt.Sprintf("Missing value in column '%s'", header),
			}
		}

		v, reason := castCell(cell, col.Type)
		if reason != "" {
			return nil, &RejectedRow{
				Line:   line,
				Data:   raw,
				Reason: fmt.Sprintf("%s in column '%s'", reason, header),
			}
		}
		row[col.Name] = v
	}

	return row, nil
}

// castCell casts one non-empty cell to the column's semantic type. On
// failure it returns the fault kind for the rejection reason.
func castCell(cell string, t SemanticType) (Value, string) {
	switch t {
	case TypeString:
		return Value{Type: TypeString, Valid: true, Str: cell}, ""

	case TypeInteger:
		i, err := ParseInteger(cell)
		switch err {
		case nil:
			return Value{Type: TypeInteger, Valid: true, Int: i}, ""
		case ErrNonInteger:
			return Value{}, "Non-integer value"
		default:
			return Value{}, "Invalid integer"
		}

	case TypeFloat:
		f, ok := ParseFloat(cell)
		if !ok {
			return Value{}, "Invalid number"
		}
		return Value{Type: TypeFloat, Valid: true, Float: f}, ""

	case TypeBoolean:
		b, ok := ParseBool(cell)
		if !ok {
			return Value{}, "Invalid boolean"
		}
		return Value{Type: TypeBoolean, Valid: true, Bool: b}, ""

	case TypeDate:
		d, ok := ParseDate(cell)
		if !ok {
			return Value{}, "Invalid date"
		}
		return Value{Type: TypeDate, Valid: true, Time: d}, ""

	case TypeDateTime:
		d, ok := ParseDateTime(cell)
		if !ok {
			return Value{}, "Invalid datetime"
		}
		return Value{Type: TypeDateTime, Valid: true, Time: d}, ""

	default:
		return Value{}, "Type error"
	}
}
