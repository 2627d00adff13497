package dbtype

// PostgreSQL returns the PostgreSql provider. PostgreSQL has no TINYINT.
func PostgreSQL() Provider {
	return &tableProvider{
		name: "PostgreSql",
		types: map[string]clrType{
			"CHAR":              str,
			"CHARACTER":         str,
			"BPCHAR":            str,
			"VARCHAR":           str,
			"CHARACTER VARYING": str,
			"TEXT":              str,
			"CITEXT":            str,
			"JSON":              str,
			"JSONB":             str,
			"XML":               str,

			"BOOL":             boolean,
			"BOOLEAN":          boolean,
			"SMALLINT":         i16,
			"INT2":             i16,
			"SMALLSERIAL":      i16,
			"INT":              i32,
			"INTEGER":          i32,
			"INT4":             i32,
			"SERIAL":           i32,
			"BIGINT":           i64,
			"INT8":             i64,
			"BIGSERIAL":        i64,
			"REAL":             f32,
			"FLOAT4":           f32,
			"DOUBLE PRECISION": f64,
			"FLOAT8":           f64,
			"DECIMAL":          dec,
			"NUMERIC":          dec,
			"MONEY":            dec,

			"DATE":                        date,
			"TIMESTAMP":                   date,
			"TIMESTAMP WITHOUT TIME ZONE": date,
			"TIMESTAMPTZ":                 dateTZ,
			"TIMESTAMP WITH TIME ZONE":    dateTZ,
			"TIME":                        span,
			"INTERVAL":                    span,

			"UUID":  guid,
			"BYTEA": bytes,
		},
		sizes: map[string]uint32{
			"CHAR":              1,
			"CHARACTER":         1,
			"VARCHAR":           255,
			"CHARACTER VARYING": 255,
			"TEXT":              UnboundedSize,
			"CITEXT":            UnboundedSize,
			"JSON":              UnboundedSize,
			"JSONB":             UnboundedSize,
			"BYTEA":             UnboundedSize,
			"SMALLINT":          2,
			"INTEGER":           4,
			"INT":               4,
			"BIGINT":            8,
			"NUMERIC":           18,
			"DECIMAL":           18,
		},
	}
}
