/*
Copyright 2022 Cortex Labs, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package requests

import (
	"bytes"
	"context"
	"io"
	"io/ioutil"
	"net"
	"net/http"
	"strings"

	"github.com/cortexlabs/qrun/pkg/lib/errors"
)

type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func New(ctx context.Context, method string, url string, body []byte, headers map[string]string) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	request, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, errors.Wrap(err, _errStrCantMakeRequest)
	}

	for key, value := range headers {
		request.Header.Set(key, value)
	}
	if body != nil && request.Header.Get("Content-Type") == "" {
		request.Header.Set("Content-Type", "application/json")
	}

	return request, nil
}

// Do sends request and reads the whole body. Transport errors keep their cause, so IsDialError can inspect them.
func Do(client *http.Client, request *http.Request) (*Response, error) {
	response, err := client.Do(request)
	if err != nil {
		return nil, errors.Wrap(err, errStrFailedToConnect(request.URL))
	}
	defer response.Body.Close()

	bodyBytes, err := ioutil.ReadAll(response.Body)
	if err != nil {
		return nil, errors.Wrap(err, _errStrRead)
	}

	return &Response{
		StatusCode: response.StatusCode,
		Header:     response.Header,
		Body:       bodyBytes,
	}, nil
}

// IsDialError reports whether the connection was never established, so the request cannot have reached the server
func IsDialError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func (r *Response) IsServerError() bool {
	return r.StatusCode >= 500
}

// Message is the trimmed body, or a placeholder naming the status code if the body is empty
func (r *Response) Message() string {
	if msg := strings.TrimSpace(string(r.Body)); msg != "" {
		return msg
	}
	return ErrorResponseUnknown("", r.StatusCode).Error()
}
