package repository

// Repositories agrupa los repositorios atados a una misma transacción.
// Lo entrega el TxRunner al callback; fuera de una transacción cada campo opera sobre el pool.
type Repositories struct {
	Products      ProductRepository
	ProductStock  ProductStockRepository
	Materials     RawMaterialRepository
	MaterialStock MaterialStockRepository
	Sales         SaleRepository
	Customers     CustomerRepository
	Shifts        ShiftRepository
	Adjustments   AdjustmentRepository
}
