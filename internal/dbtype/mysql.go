package dbtype

// MySQL returns the MySql provider.
func MySQL() Provider {
	return &tableProvider{
		name: "MySql",
		types: map[string]clrType{
			"CHAR":       str,
			"VARCHAR":    str,
			"TINYTEXT":   str,
			"TEXT":       str,
			"MEDIUMTEXT": str,
			"LONGTEXT":   str,
			"JSON":       str,
			"ENUM":       str,
			"SET":        str,

			"BIT":       boolean,
			"BOOL":      boolean,
			"BOOLEAN":   boolean,
			"TINYINT":   u8,
			"SMALLINT":  i16,
			"MEDIUMINT": i32,
			"INT":       i32,
			"INTEGER":   i32,
			"YEAR":      i32,
			"BIGINT":    i64,
			"FLOAT":     f32,
			"DOUBLE":    f64,
			"REAL":      f64,
			"DECIMAL":   dec,
			"NUMERIC":   dec,

			"DATE":      date,
			"DATETIME":  date,
			"TIMESTAMP": date,
			"TIME":      span,

			"BINARY":     bytes,
			"VARBINARY":  bytes,
			"TINYBLOB":   bytes,
			"BLOB":       bytes,
			"MEDIUMBLOB": bytes,
			"LONGBLOB":   bytes,
		},
		sizes: map[string]uint32{
			"CHAR":       1,
			"VARCHAR":    255,
			"TINYTEXT":   255,
			"TEXT":       UnboundedSize,
			"MEDIUMTEXT": UnboundedSize,
			"LONGTEXT":   UnboundedSize,
			"JSON":       UnboundedSize,
			"BINARY":     1,
			"VARBINARY":  255,
			"BLOB":       UnboundedSize,
			"LONGBLOB":   UnboundedSize,
			"TINYINT":    1,
			"SMALLINT":   2,
			"INT":        4,
			"INTEGER":    4,
			"BIGINT":     8,
			"DECIMAL":    18,
			"DATETIME":   8,
		},
	}
}
