package database

func SchemaSQL() string { return schemaSQL }
