package usecase

import (
	"github.com/hashicorp/go-hclog"

	"github.com/greenstack/stackconsole/model"
	"github.com/greenstack/stackconsole/storage_client"
)

const (
	readACLHeader  = "X-Container-Read"
	writeACLHeader = "X-Container-Write"
)

// ACLService reconciles the read and write grant sets of a container. The
// storage service keeps each set as one opaque header string, so every
// mutation is a full read-modify-write of both headers; concurrent edits of
// the same container are last-writer-wins on the whole header. The storage
// service offers no conditional write for metadata, so that race stays
// unguarded here.
type ACLService struct {
	storage storage_client.Client
	logger  hclog.Logger
}

func NewACLService(storage storage_client.Client, logger hclog.Logger) *ACLService {
	return &ACLService{storage: storage, logger: logger.Named("acl")}
}

// Grant adds entry to the requested grant sets. Re-granting is absorbed by
// the set semantics, so the serialized headers never carry duplicates.
func (s *ACLService) Grant(container, entry string, read, write bool) error {
	readers, writers, err := s.currentACLs(container)
	if err != nil {
		return err
	}

	if read {
		readers.Add(entry)
	}
	if write {
		writers.Add(entry)
	}
	return s.post(container, readers, writers)
}

// Revoke removes each entry from both grant sets; a delete always targets
// both kinds.
func (s *ACLService) Revoke(container string, entries []string) error {
	readers, writers, err := s.currentACLs(container)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		readers.Remove(entry)
		writers.Remove(entry)
	}
	return s.post(container, readers, writers)
}

// SetPublic toggles anonymous read via the wildcard entry.
func (s *ACLService) SetPublic(container string, public bool) error {
	if public {
		return s.Grant(container, model.PublicReadEntry, true, false)
	}
	return s.Revoke(container, []string{model.PublicReadEntry})
}

// Status reports whether the container is publicly readable.
func (s *ACLService) Status(container string) (bool, error) {
	readers, _, err := s.currentACLs(container)
	if err != nil {
		return false, err
	}
	return readers.Contains(model.PublicReadEntry), nil
}

// currentACLs fetches and deduplicates both grant sets. Dedup happens on
// every read because the stored header may already carry duplicates.
func (s *ACLService) currentACLs(container string) (*model.ACLSet, *model.ACLSet, error) {
	headers, err := s.storage.HeadContainer(container)
	if err != nil {
		return nil, nil, err
	}
	return model.ParseACL(headers[readACLHeader]), model.ParseACL(headers[writeACLHeader]), nil
}

func (s *ACLService) post(container string, readers, writers *model.ACLSet) error {
	return s.storage.PostContainer(container, map[string]string{
		readACLHeader:  readers.String(),
		writeACLHeader: writers.String(),
	})
}
