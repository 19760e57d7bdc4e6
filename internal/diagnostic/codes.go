package diagnostic

// Diagnostic codes emitted by the metamodel generator.
const (
	CodeMultipleSubjectIDs  = "multiple_subject_ids"
	CodeSubjectIDSensitive  = "subject_id_sensitive"
	CodeUnknownMarkerOption = "unknown_marker_option"
	CodeIgnoredType         = "ignored_type"
	CodeNestedSubjectID     = "nested_subject_id"
)

// Diagnostic codes emitted by configuration validation.
const (
	CodeConfigNil          = "config_is_nil"
	CodeNoPackages         = "no_packages"
	CodeEmptyPackage       = "empty_package"
	CodeDuplicatePackage   = "duplicate_package"
	CodeInvalidIgnoreEntry = "invalid_ignore_entry"
	CodeInvalidContainer   = "invalid_container"
	CodeInvalidFormat      = "invalid_format"
	CodeInvalidTagKey      = "invalid_tag_key"
	CodeNoOutput           = "no_output"
)
