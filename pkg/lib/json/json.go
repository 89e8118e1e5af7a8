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

package json

import (
	"bytes"
	"encoding/json"

	"github.com/cortexlabs/qrun/pkg/lib/errors"
)

const (
	_errStrMarshalJSON   = "unable to marshal json"
	_errStrUnmarshalJSON = "unable to unmarshal json"
)

func MarshalIndent(obj interface{}) ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, _errStrMarshalJSON)
	}
	return jsonBytes, nil
}

func Marshal(obj interface{}) ([]byte, error) {
	jsonBytes, err := json.Marshal(obj)
	if err != nil {
		return nil, errors.Wrap(err, _errStrMarshalJSON)
	}
	return jsonBytes, nil
}

func Unmarshal(jsonBytes []byte, dst interface{}) error {
	if err := json.Unmarshal(jsonBytes, dst); err != nil {
		return errors.Wrap(err, _errStrUnmarshalJSON)
	}
	return nil
}

// UnmarshalStrict fails on fields that dst does not declare
func UnmarshalStrict(jsonBytes []byte, dst interface{}) error {
	d := json.NewDecoder(bytes.NewReader(jsonBytes))
	d.DisallowUnknownFields()
	if err := d.Decode(dst); err != nil {
		return errors.Wrap(err, _errStrUnmarshalJSON)
	}
	return nil
}

