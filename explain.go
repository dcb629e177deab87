package urlup

import "fmt"

// CodeMeaning returns a human-readable explanation of an HTTP status code,
// suitable for the explain mode of the command-line tool.
func CodeMeaning(code int) string {
	if meaning, ok := codeMeanings[code]; ok {
		return meaning
	}
	switch {
	case code >= 100 && code < 200:
		return "Informational response; the request was received and processing continues."
	case code >= 200 && code < 300:
		return "The request succeeded."
	case code >= 300 && code < 400:
		return "Further action is needed to complete the request, typically following a redirection."
	case code >= 400 && code < 500:
		return "The request appears to contain an error and was not processed."
	case code >= 500 && code < 600:
		return "The server failed to fulfill an apparently valid request."
	}
	return fmt.Sprintf("Unknown status code %d.", code)
}

var codeMeanings = map[int]string{
	100: "Continue. The server has received the request headers and the client should proceed to send the request body.",
	101: "Switching Protocols. The server agrees to switch to the protocol requested by the client.",
	102: "Processing. The server has received the request and is processing it, but no response is available yet.",
	103: "Early Hints. Preliminary headers are being returned before the final response.",

	200: "OK. The request succeeded and the response carries the requested content.",
	201: "Created. The request succeeded and a new resource was created as a result.",
	202: "Accepted. The request has been received but not yet acted upon; it is intended for cases where another process or server handles the request, or for batch processing.",
	203: "Non-Authoritative Information. The returned metadata comes from a local or third-party copy rather than the origin server.",
	204: "No Content. The request succeeded but there is no content to return.",
	205: "Reset Content. The request succeeded and the client should reset the document view.",
	206: "Partial Content. The server is delivering only the requested range of the resource.",
	207: "Multi-Status. The response conveys information about multiple resources.",
	208: "Already Reported. The members of a binding have already been enumerated in a preceding part of the response.",
	226: "IM Used. The response is a representation of the result of one or more instance manipulations.",

	300: "Multiple Choices. The request has more than one possible response and the client should choose one.",
	301: "Moved Permanently. The resource has been assigned a new permanent URL and future references should use it.",
	302: "Found. The resource resides temporarily under a different URL.",
	303: "See Other. The response can be found under a different URL using a GET request.",
	304: "Not Modified. The cached version the client holds is still valid.",
	305: "Use Proxy. The requested resource must be accessed through the proxy given in the response (deprecated).",
	307: "Temporary Redirect. The resource resides temporarily under a different URL and the request method must not change.",
	308: "Permanent Redirect. The resource has moved permanently and the request method must not change.",

	400: "Bad Request. The server cannot process the request due to an apparent client error.",
	401: "Unauthorized. Authentication is required and has failed or has not been provided.",
	402: "Payment Required. Reserved for future use.",
	403: "Forbidden. The server understood the request but refuses to authorize it.",
	404: "Not Found. The requested resource could not be found on the server.",
	405: "Method Not Allowed. The request method is not supported for the requested resource.",
	406: "Not Acceptable. The resource cannot produce content acceptable according to the request's Accept headers.",
	407: "Proxy Authentication Required. The client must first authenticate itself with the proxy.",
	408: "Request Timeout. The server timed out waiting for the request.",
	409: "Conflict. The request could not be completed due to a conflict with the current state of the resource.",
	410: "Gone. The resource is no longer available and no forwarding address is known.",
	411: "Length Required. The request did not specify the length of its content.",
	412: "Precondition Failed. A precondition given in the request headers evaluated to false.",
	413: "Payload Too Large. The request entity is larger than the server is willing to process.",
	414: "URI Too Long. The URL provided was too long for the server to process.",
	415: "Unsupported Media Type. The request entity has a media type the server does not support.",
	416: "Range Not Satisfiable. The requested range cannot be fulfilled.",
	417: "Expectation Failed. The server cannot meet the requirements of the Expect request header.",
	418: "I'm a teapot. The server refuses to brew coffee because it is, permanently, a teapot.",
	421: "Misdirected Request. The request was directed at a server that is not able to produce a response.",
	422: "Unprocessable Content. The request was well-formed but could not be followed due to semantic errors.",
	423: "Locked. The resource being accessed is locked.",
	424: "Failed Dependency. The request failed because it depended on another request that failed.",
	425: "Too Early. The server is unwilling to risk processing a request that might be replayed.",
	426: "Upgrade Required. The client should switch to a different protocol.",
	428: "Precondition Required. The origin server requires the request to be conditional.",
	429: "Too Many Requests. The user has sent too many requests in a given amount of time.",
	431: "Request Header Fields Too Large. The server is unwilling to process the request because its header fields are too large.",
	451: "Unavailable For Legal Reasons. Access to the resource has been denied for legal reasons.",

	500: "Internal Server Error. The server encountered an unexpected condition that prevented it from fulfilling the request.",
	501: "Not Implemented. The server does not support the functionality required to fulfill the request.",
	502: "Bad Gateway. The server, acting as a gateway, received an invalid response from the upstream server.",
	503: "Service Unavailable. The server is currently unable to handle the request due to overload or maintenance.",
	504: "Gateway Timeout. The server, acting as a gateway, did not receive a timely response from the upstream server.",
	505: "HTTP Version Not Supported. The server does not support the HTTP protocol version used in the request.",
	506: "Variant Also Negotiates. The server has an internal configuration error in its content negotiation.",
	507: "Insufficient Storage. The server is unable to store the representation needed to complete the request.",
	508: "Loop Detected. The server detected an infinite loop while processing the request.",
	510: "Not Extended. Further extensions to the request are required for the server to fulfill it.",
	511: "Network Authentication Required. The client needs to authenticate to gain network access.",
}
