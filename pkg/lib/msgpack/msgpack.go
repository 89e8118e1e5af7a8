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

package msgpack

import (
	"github.com/cortexlabs/qrun/pkg/lib/errors"
	"github.com/ugorji/go/codec"
)

const (
	ErrMarshalMsgpack   = "msgpack.marshal"
	ErrUnmarshalMsgpack = "msgpack.unmarshal"
)

var _mh codec.MsgpackHandle

func init() {
	_mh.RawToString = true
	_mh.WriteExt = true
}

func Marshal(obj interface{}) ([]byte, error) {
	var bytes []byte
	enc := codec.NewEncoderBytes(&bytes, &_mh)
	if err := enc.Encode(obj); err != nil {
		return nil, errors.WithStack(&errors.Error{
			Kind:    ErrMarshalMsgpack,
			Message: "failed to encode msgpack: " + err.Error(),
			Cause:   err,
		})
	}
	return bytes, nil
}

// Unmarshal decodes into obj, which must be a pointer
func Unmarshal(b []byte, obj interface{}) error {
	dec := codec.NewDecoderBytes(b, &_mh)
	if err := dec.Decode(obj); err != nil {
		return errors.WithStack(&errors.Error{
			Kind:    ErrUnmarshalMsgpack,
			Message: "failed to decode msgpack: " + err.Error(),
			Cause:   err,
		})
	}
	return nil
}
