package resp

// Machine readable codes carried in dto.ErrorResponse.
const (
	CodeNotFound      = "NOT_FOUND"
	CodeInternalError = "INTERNAL_ERROR"
	CodeServiceBusy   = "SERVICE_BUSY"
)
