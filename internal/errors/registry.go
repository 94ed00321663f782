package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	"B001": {
		Category: CategoryHost,
		Message:  "Host adapter does not support static content insertion",
		Detail:   "A Static node was patched against a HostOps implementation that does not implement StaticOps. Implement InsertStaticContent on the host adapter or stop producing Static nodes for this target.",
	},
	"B002": {
		Category: CategoryRuntime,
		Message:  "Block closed without a matching OpenBlock",
		Detail:   "NewBlock and CloseBlock require a prior OpenBlock on the same BuildContext. Block open/close calls must be balanced; this is a programmer error, not a recoverable condition.",
	},
	"B003": {
		Category: CategoryRuntime,
		Message:  "No extension registered for external node kind",
		Detail:   "A Component, Portal, or Boundary node reached the dispatcher without a registered ComponentOps implementation. Register one with renderer.WithExtension before patching such nodes.",
	},
	"B004": {
		Category: CategoryValidation,
		Message:  "Duplicate key in keyed children",
		Detail:   "Two new siblings carry the same key. The last occurrence wins the match; earlier ones are unmounted and remounted. The result is deterministic but usually unintended.",
	},
}
