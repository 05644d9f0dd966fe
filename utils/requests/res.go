package requests

import (
	"net/http"
)

type ResponseStatus = int

const (
	RESPONSE_STATUS_DOWN    ResponseStatus = iota // Request succeeded but server error code.
	RESPONSE_STATUS_PARTIAL                       // Request went through but not success or down.
	RESPONSE_STATUS_FAILED                        // Request failed to go through due to network or dns error.
	RESPONSE_STATUS_OK                            // Everything succeeded as it should like a good little request.
)

func WithResponseStatus(r *http.Response, e error) (status ResponseStatus, ok bool) {
	if e != nil {
		return RESPONSE_STATUS_FAILED, false
	}

	return GetResponseStatus(r.StatusCode)
}

func GetResponseStatus(code int) (status ResponseStatus, ok bool) {
	switch code {
	case 304, 204, 200:
		return RESPONSE_STATUS_OK, true
	case 505, 504, 503, 502, 500, 404:
		return RESPONSE_STATUS_DOWN, false
	}

	// Any non-error or non-success is a grey area.
	// We mark it "not ok" since we can't be sure the body holds a feed.
	return RESPONSE_STATUS_PARTIAL, false
}
