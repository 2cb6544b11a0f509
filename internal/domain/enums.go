package domain

// CopyType labels a printed copy of an invoice.
type CopyType string

const (
	CopyOriginal        CopyType = "Original for Buyer"
	CopyOffice          CopyType = "Office Copy"
	CopyDeliveryChallan CopyType = "Delivery Challan"
)

// AllowedCopyTypes maps the query-parameter value to its CopyType.
var AllowedCopyTypes = map[string]CopyType{
	"original": CopyOriginal,
	"office":   CopyOffice,
	"challan":  CopyDeliveryChallan,
}

// StoreBackend selects the implementation backing the invoice store.
type StoreBackend string

const (
	StoreMemory   StoreBackend = "memory"
	StoreRedis    StoreBackend = "redis"
	StorePostgres StoreBackend = "postgres"
)
