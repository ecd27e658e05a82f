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

package httpclient

import "fmt"

// Error is returned for any response outside the 2xx range.
type Error struct {
	Code   int
	Status string
	Detail []byte
}

func (e *Error) Error() string {
	return fmt.Sprintf("request failed with status %s, body: %s", e.Status, string(e.Detail))
}
