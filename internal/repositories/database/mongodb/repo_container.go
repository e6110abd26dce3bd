package mongodb

import (
	"go.mongodb.org/mongo-driver/mongo"

	portsrepo "github.com/workexpress/wx_backend/internal/core/ports/repositories"
)

// DocumentRepositories bundles the repositories backed by the document store.
type DocumentRepositories struct {
	PackageRepo  portsrepo.PackageRepositoryFacade
	OperatorRepo portsrepo.OperatorReader
}

func NewDocumentRepositories(db *mongo.Database) DocumentRepositories {
	return DocumentRepositories{
		PackageRepo:  newMongoPackageRepository(db),
		OperatorRepo: newMongoOperatorRepository(db),
	}
}
