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

package urls

import (
	"github.com/cortexlabs/qrun/pkg/lib/errors"
	s "github.com/cortexlabs/qrun/pkg/lib/strings"
)

const (
	ErrInvalidURL = "urls.invalid_url"
)

func ErrorInvalidURL(provided string) error {
	return errors.WithStack(&errors.Error{
		Kind:    ErrInvalidURL,
		Message: s.UserStr(provided) + " is not a valid URL (it must include a scheme and a host, e.g. https://arnica.aqt.eu)",
	})
}
