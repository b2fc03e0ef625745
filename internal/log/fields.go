package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"

	FieldScenario = "scenario"
	FieldPerson   = "person"
	FieldSourceID = "source_id"
	FieldMonth    = "month"
	FieldPlanID   = "plan_id"
	FieldAmount   = "amount"
	FieldStateKey = "state_key"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentStore   = "store"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentSheets  = "sheets"
	ComponentWorker  = "worker"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpLoad     = "load"
	OpSave     = "save"
	OpSync     = "sync"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
