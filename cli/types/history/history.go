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

package history

import (
	"sort"
	"time"

	"github.com/cortexlabs/qrun/pkg/lib/errors"
	"github.com/cortexlabs/qrun/pkg/lib/files"
	"github.com/cortexlabs/qrun/pkg/lib/json"
	"github.com/cortexlabs/qrun/pkg/lib/msgpack"
	"github.com/cortexlabs/qrun/pkg/types/api"
	"github.com/google/uuid"
)

// MaxEntries bounds the history file; the oldest entries are dropped first
const MaxEntries = 500

type Entry struct {
	JobID       string    `codec:"job_id"`
	Env         string    `codec:"env"`
	WorkspaceID string    `codec:"workspace_id"`
	ResourceID  string    `codec:"resource_id"`
	Label       string    `codec:"label"`
	NumCircuits int       `codec:"num_circuits"`
	Submitted   time.Time `codec:"submitted"`
	// LastStatus is the last status seen by the cli; the portal may have moved on since
	LastStatus string `codec:"last_status"`
	// Submission is the submitted job as json, needed to decode its result later
	Submission []byte `codec:"submission"`
}

func NewEntry(env string, user api.JobUser, submission api.JobSubmission, submitted time.Time) (Entry, error) {
	submissionBytes, err := json.Marshal(submission)
	if err != nil {
		return Entry{}, err
	}

	return Entry{
		JobID:       user.JobID.String(),
		Env:         env,
		WorkspaceID: user.WorkspaceID,
		ResourceID:  user.ResourceID,
		Label:       user.Label,
		NumCircuits: submission.NumCircuits(),
		Submitted:   submitted,
		LastStatus:  api.StatusQueued.String(),
		Submission:  submissionBytes,
	}, nil
}

func (entry Entry) DecodeSubmission() (api.JobSubmission, error) {
	var submission api.JobSubmission
	if err := json.Unmarshal(entry.Submission, &submission); err != nil {
		return api.JobSubmission{}, errors.Wrap(err, "job "+entry.JobID, "submission")
	}
	return submission, nil
}

func (entry Entry) UUID() (uuid.UUID, error) {
	return uuid.Parse(entry.JobID)
}

type History struct {
	path    string
	Entries []Entry
}

// Load returns an empty history when the file does not exist yet
func Load(path string) (*History, error) {
	h := &History{path: path}
	if !files.IsFile(path) {
		return h, nil
	}

	b, err := files.ReadFileBytes(path)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return h, nil
	}
	if err := msgpack.Unmarshal(b, &h.Entries); err != nil {
		return nil, errors.Wrap(err, path)
	}
	return h, nil
}

func (h *History) Add(entry Entry) {
	h.Entries = append(h.Entries, entry)
	if len(h.Entries) > MaxEntries {
		h.Entries = h.Entries[len(h.Entries)-MaxEntries:]
	}
}

// SetStatus records the latest status of jobID; it reports whether the job is in the history
func (h *History) SetStatus(jobID string, status api.JobStatus) bool {
	for i := range h.Entries {
		if h.Entries[i].JobID == jobID {
			h.Entries[i].LastStatus = status.String()
			return true
		}
	}
	return false
}

func (h *History) Find(jobID string) (Entry, bool) {
	for _, entry := range h.Entries {
		if entry.JobID == jobID {
			return entry, true
		}
	}
	return Entry{}, false
}

// Newest returns up to n entries, most recent first (all of them when n <= 0)
func (h *History) Newest(n int) []Entry {
	entries := append([]Entry(nil), h.Entries...)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Submitted.After(entries[j].Submitted)
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

func (h *History) Save() error {
	b, err := msgpack.Marshal(h.Entries)
	if err != nil {
		return err
	}
	return files.WriteFile(b, h.path)
}
