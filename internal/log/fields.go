package log

// Common field names for structured logging
const (
	FieldComponent     = "component"
	FieldError         = "error"
	FieldOperation     = "operation"
	FieldPersonID      = "person_id"
	FieldPersonName    = "name"
	FieldTransactionID = "transaction_id"
	FieldEntryType     = "entry_type"
	FieldAmount        = "amount"
	FieldDate          = "date"
	FieldCount         = "count"
	FieldBackend       = "backend"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentRegistry = "registry"
	ComponentLedger   = "ledger"
	ComponentStorage  = "storage"
	ComponentBackend  = "backend"
	ComponentCLI      = "cli"
)

// Operations defines standard operation names
const (
	OpCreate  = "create"
	OpRename  = "rename"
	OpDelete  = "delete"
	OpPurge   = "purge"
	OpClear   = "clear"
	OpList    = "list"
	OpQuery   = "query"
	OpLoad    = "load"
	OpSave    = "save"
	OpStartup = "startup"
)
