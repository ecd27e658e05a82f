/*
Copyright 2024 The GeoSys Authors.

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

import "fmt"

// CodeError carries an HTTP status alongside a description so that handlers
// can map service failures onto responses without inspecting error strings.
type CodeError struct {
	errCode     int
	description string
}

func NewHTTPError(code int, desc string) *CodeError {
	return &CodeError{errCode: code, description: desc}
}

func (e *CodeError) Error() string {
	return fmt.Sprintf("code: %d, message: %s", e.errCode, e.description)
}

func (e *CodeError) Code() int {
	return e.errCode
}

func (e *CodeError) Description() string {
	return e.description
}

// AddDesc returns a copy with the description replaced. The original error
// values below are shared, so they are never mutated in place.
func (e *CodeError) AddDesc(desc string) *CodeError {
	return &CodeError{errCode: e.errCode, description: desc}
}

func (e *CodeError) AddErr(err error) *CodeError {
	return &CodeError{errCode: e.errCode, description: err.Error()}
}

var (
	ErrInvalidParam  = NewHTTPError(400, "invalid parameter")
	ErrNotFound      = NewHTTPError(404, "not found")
	ErrInternalError = NewHTTPError(500, "internal error")
)
