package backendapi

import (
	"fmt"
	"sort"
	"strconv"
)

func flattenInto(rows *[]MetricRow, prefix string, value any) {
	switch v := value.(type) {
	case map[string]any:
		for key, child := range v {
			name := key
			if prefix != "" {
				name = prefix + "." + key
			}
			flattenInto(rows, name, child)
		}
	case []any:
		*rows = append(*rows, MetricRow{Key: prefix, Value: strconv.Itoa(len(v))})
	case nil:
		*rows = append(*rows, MetricRow{Key: prefix, Value: ""})
	case float64:
		*rows = append(*rows, MetricRow{Key: prefix, Value: strconv.FormatFloat(v, 'f', -1, 64)})
	case bool:
		*rows = append(*rows, MetricRow{Key: prefix, Value: strconv.FormatBool(v)})
	default:
		*rows = append(*rows, MetricRow{Key: prefix, Value: fmt.Sprint(v)})
	}
}

func sortRows(rows []MetricRow) {
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
}

// Number returns the numeric metric at a dotted key.
func (m Metrics) Number(key string) (float64, bool) {
	for _, row := range m.Flatten() {
		if row.Key == key {
			f, err := strconv.ParseFloat(row.Value, 64)
			return f, err == nil
		}
	}
	return 0, false
}
