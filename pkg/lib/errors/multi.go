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

package errors

// AddError appends err, wrapped with strs, when it is not nil; the bool reports whether it was added
func AddError(errs []error, err error, strs ...string) ([]error, bool) {
	if err == nil {
		return errs, false
	}
	return append(errs, Wrap(err, strs...)), true
}

func HasError(errs []error) bool {
	return FirstError(errs...) != nil
}

func FirstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
