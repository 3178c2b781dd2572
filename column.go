package parquet

import "context"

// ReadColumn returns the flattened value sequence for req's one requested
// column across every row group its row range touches: nil for a null, a
// scalar for a column with no repeated ancestor, or []interface{} for one
// whose path carries a repeated group.
func ReadColumn(ctx context.Context, req *Request) ([]interface{}, error) {
	if _, _, _, err := req.singleColumn(ctx); err != nil {
		return nil, err
	}

	sub := *req
	sub.RowFormat = RowFormatArray
	sub.OnComplete = nil

	rows, err := Read(ctx, &sub)
	if err != nil {
		return nil, err
	}

	values := make([]interface{}, len(rows))
	for i, row := range rows {
		values[i] = row.([]interface{})[0]
	}

	return values, nil
}
