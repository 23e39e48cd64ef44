package repository

// Tx repositorios atados a una misma transacción. Lo entrega el TxRunner de cada
// adaptador (postgres, memory); todo lo escrito a través de él se confirma o se
// descarta en bloque.
type Tx interface {
	Products() ProductRepository
	Categories() CategoryRepository
	Movements() StockMovementRepository
	Sequences() SequenceRepository
	Partners() PartnerRepository
	Sales() SalesRepository
	Purchasing() PurchasingRepository
}
