package errors

import (
	"errors"
	"fmt"
	"net"
	"net/url"
)

type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	URLOp      string `json:"url_op,omitempty"`
	URL        string `json:"url,omitempty"`
	NetTimeout bool   `json:"net_timeout,omitempty"`
}

// Dump flattens err into loggable fields, including request details from
// *url.Error and timeout hints from net.Error when present in the chain.
func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{
		TopMessage: err.Error(),
	}

	if te := As(err); te != nil {
		d.Code = te.Code()
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		d.URLOp = urlErr.Op
		d.URL = urlErr.URL
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		d.NetTimeout = netErr.Timeout()
	}

	return d
}

// Fields renders the dump as a logger field map.
func (d ErrorDump) Fields() map[string]any {
	fields := map[string]any{
		"error":       d.TopMessage,
		"error_code":  d.Code,
		"error_chain": d.Chain,
	}
	if d.URL != "" {
		fields["url"] = d.URL
		fields["url_op"] = d.URLOp
	}
	if d.NetTimeout {
		fields["net_timeout"] = true
	}
	return fields
}
