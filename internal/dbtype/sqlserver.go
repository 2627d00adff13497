package dbtype

// SQLServer returns the SqlServer provider.
func SQLServer() Provider {
	return &tableProvider{
		name: "SqlServer",
		types: map[string]clrType{
			"CHAR":     str,
			"VARCHAR":  str,
			"NCHAR":    str,
			"NVARCHAR": str,
			"TEXT":     str,
			"NTEXT":    str,
			"XML":      str,

			"BIT":        boolean,
			"TINYINT":    u8,
			"SMALLINT":   i16,
			"INT":        i32,
			"BIGINT":     i64,
			"REAL":       f32,
			"FLOAT":      f64,
			"DECIMAL":    dec,
			"NUMERIC":    dec,
			"MONEY":      dec,
			"SMALLMONEY": dec,

			"DATE":           date,
			"DATETIME":       date,
			"DATETIME2":      date,
			"SMALLDATETIME":  date,
			"DATETIMEOFFSET": dateTZ,
			"TIME":           span,

			"UNIQUEIDENTIFIER": guid,

			"BINARY":     bytes,
			"VARBINARY":  bytes,
			"IMAGE":      bytes,
			"TIMESTAMP":  bytes,
			"ROWVERSION": bytes,
		},
		sizes: map[string]uint32{
			"CHAR":      1,
			"NCHAR":     1,
			"VARCHAR":   255,
			"NVARCHAR":  255,
			"TEXT":      UnboundedSize,
			"NTEXT":     UnboundedSize,
			"XML":       UnboundedSize,
			"VARBINARY": 255,
			"IMAGE":     UnboundedSize,
			"TINYINT":   1,
			"SMALLINT":  2,
			"INT":       4,
			"BIGINT":    8,
			"DECIMAL":   18,
			"DATETIME":  8,
		},
	}
}
