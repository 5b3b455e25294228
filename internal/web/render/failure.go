package render

import (
	"net/http"

	"github.com/taskpilot/taskpilot-web/internal/gateway"
)

const MsgNetwork = "Network error."

// Failure maps a failed upstream call to the response status and the banner
// text. The API's own message wins when it turned the request down; transport
// problems get MsgNetwork and anything else gets fallback.
func Failure(err error, fallback string) (int, string) {
	switch {
	case gateway.Rejected(err):
		return http.StatusBadRequest, gateway.UserMessage(err, fallback)
	case gateway.IsKind(err, gateway.KindTransport), gateway.IsKind(err, gateway.KindTimeout):
		return http.StatusBadGateway, MsgNetwork
	default:
		return http.StatusBadGateway, fallback
	}
}
