package coordinator

// NoticeLevel grades user-visible notices: warnings for recoverable
// local-policy rejections, errors for failed operations and expiry.
type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice is a user-visible message emitted by the coordinator. The UI
// subscribes to notices and renders them; it never mutates state itself.
type Notice struct {
	Level      NoticeLevel
	SeatNumber string
	Message    string
}
