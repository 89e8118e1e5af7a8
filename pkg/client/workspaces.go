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

package client

import (
	"context"

	"github.com/cortexlabs/qrun/pkg/lib/json"
	"github.com/cortexlabs/qrun/pkg/types/api"
)

// Workspaces lists the workspaces and resources the token has access to
func (c *Client) Workspaces(ctx context.Context) (api.Workspaces, error) {
	resp, err := c.get(ctx, "/workspaces", false)
	if err != nil {
		return nil, err
	}

	var workspaces api.Workspaces
	if err := json.Unmarshal(resp.Body, &workspaces); err != nil {
		return nil, ErrorProtocolError(err)
	}
	return workspaces, nil
}
