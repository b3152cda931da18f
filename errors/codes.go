package errors

// ErrorCode identifies a failure class in API responses and logs
type ErrorCode int

const (
	ErrorCode_UNKNOWN ErrorCode = iota
	ErrorCode_HTTP_OK
	ErrorCode_INTERNAL
	ErrorCode_INVALID_ARGUMENT
	ErrorCode_INVALID_PAYLOAD
	ErrorCode_NOT_FOUND
	ErrorCode_SUMMARY_NOT_FOUND
	ErrorCode_ANALYSIS_FAILED
	ErrorCode_TRANSCRIPTION_FAILED
	ErrorCode_FILE_LIST_FAILED
	ErrorCode_ACTION_ITEM_INDEX
	ErrorCode_INTEGRATION_STORAGE_FAILED
	ErrorCode_INTEGRATION_CACHE_FAILED
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED
	ErrorCode_DB_QUERY_FAILED
)

var codeNames = map[ErrorCode]string{
	ErrorCode_UNKNOWN:                         "UNKNOWN",
	ErrorCode_HTTP_OK:                         "OK",
	ErrorCode_INTERNAL:                        "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:                "INVALID_ARGUMENT",
	ErrorCode_INVALID_PAYLOAD:                 "INVALID_PAYLOAD",
	ErrorCode_NOT_FOUND:                       "NOT_FOUND",
	ErrorCode_SUMMARY_NOT_FOUND:               "SUMMARY_NOT_FOUND",
	ErrorCode_ANALYSIS_FAILED:                 "ANALYSIS_FAILED",
	ErrorCode_TRANSCRIPTION_FAILED:            "TRANSCRIPTION_FAILED",
	ErrorCode_FILE_LIST_FAILED:                "FILE_LIST_FAILED",
	ErrorCode_ACTION_ITEM_INDEX:               "ACTION_ITEM_INDEX",
	ErrorCode_INTEGRATION_STORAGE_FAILED:      "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:        "INTEGRATION_CACHE_FAILED",
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED: "INTEGRATION_EXTERNAL_API_FAILED",
	ErrorCode_DB_QUERY_FAILED:                 "DB_QUERY_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
