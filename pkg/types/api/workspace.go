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

package api

import (
	"strings"

	"github.com/gobwas/glob"
)

type ResourceType string

const (
	ResourceTypeSimulator ResourceType = "simulator"
	ResourceTypeDevice    ResourceType = "device"
)

func ResourceTypeFromString(s string) (ResourceType, error) {
	switch ResourceType(strings.ToLower(s)) {
	case ResourceTypeSimulator:
		return ResourceTypeSimulator, nil
	case ResourceTypeDevice:
		return ResourceTypeDevice, nil
	}
	return "", ErrorInvalidResourceType(s)
}

type Resource struct {
	ID   string       `json:"id"`
	Name string       `json:"name"`
	Type ResourceType `json:"type"`
}

type Workspace struct {
	ID        string     `json:"id"`
	Resources []Resource `json:"resources"`
}

type Workspaces []Workspace

// FilterOptions patterns are case-insensitive globs; empty fields match anything
type FilterOptions struct {
	Workspace string
	Resource  string
	Type      ResourceType
}

// Filter returns a copy keeping the matching workspaces and, within them, the matching resources.
// A matching workspace is kept even if none of its resources match.
func (workspaces Workspaces) Filter(opts FilterOptions) (Workspaces, error) {
	workspaceGlob, err := compilePattern(opts.Workspace)
	if err != nil {
		return nil, err
	}
	resourceGlob, err := compilePattern(opts.Resource)
	if err != nil {
		return nil, err
	}

	filtered := Workspaces{}
	for _, workspace := range workspaces {
		if workspaceGlob != nil && !workspaceGlob.Match(strings.ToLower(workspace.ID)) {
			continue
		}

		resources := []Resource{}
		for _, resource := range workspace.Resources {
			if opts.Type != "" && resource.Type != opts.Type {
				continue
			}
			if resourceGlob != nil && !resourceGlob.Match(strings.ToLower(resource.ID)) {
				continue
			}
			resources = append(resources, resource)
		}

		filtered = append(filtered, Workspace{ID: workspace.ID, Resources: resources})
	}

	return filtered, nil
}

func (workspaces Workspaces) Find(workspaceID string, resourceID string) (Resource, bool) {
	for _, workspace := range workspaces {
		if workspace.ID != workspaceID {
			continue
		}
		for _, resource := range workspace.Resources {
			if resource.ID == resourceID {
				return resource, true
			}
		}
	}
	return Resource{}, false
}

func compilePattern(pattern string) (glob.Glob, error) {
	if pattern == "" {
		return nil, nil
	}
	g, err := glob.Compile(strings.ToLower(pattern))
	if err != nil {
		return nil, ErrorInvalidPattern(pattern, err)
	}
	return g, nil
}
