package validation

const (
	ErrMsgReadDataFailed      = "failed to read data file %s: %w"
	ErrMsgLoadSchemaFailed    = "failed to load schema %s: %w"
	ErrMsgParseDataFailed     = "failed to parse JSON data: %w"
	ErrMsgReadSchemaFailed    = "failed to read schema file: %w"
	ErrMsgParseSchemaFailed   = "failed to parse schema JSON: %w"
	ErrMsgAddResourceFailed   = "failed to add schema resource: %w"
	ErrMsgCompileSchemaFailed = "failed to compile schema: %w"
	ErrMsgSchemaNotFound      = "schema file not found: %s"
	ErrMsgGetwdFailed         = "failed to get current directory: %w"
	ErrMsgSchemaViolations    = "schema validation failed"

	rootLocation = "(root)"
	goModFile    = "go.mod"
)
