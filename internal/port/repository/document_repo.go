package repository

import "context"

// DocumentRepository is the pass-through persistence contract shared by the
// user and product collections: whatever the caller sends is stored, whatever
// is stored is returned.
type DocumentRepository interface {
	Insert(ctx context.Context, doc map[string]interface{}) (map[string]interface{}, error)
	List(ctx context.Context) ([]map[string]interface{}, error)
}
