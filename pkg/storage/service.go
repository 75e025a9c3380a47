package storage

//go:generate mockgen -source=service.go -destination=mock/service.go

// Service keeps raw snapshot payloads, addressed by their content.
type Service interface {
	Initialize() error
	Save(payload []byte) (EntryID, error)
	Load(id EntryID) ([]byte, error)
	List() ([]EntryID, error)
}
