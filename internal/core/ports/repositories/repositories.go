package repositories

// RepositoryProvider bundles all repository interfaces for wiring the
// service container.
type RepositoryProvider struct {
	Transaction TransactionRepository
	Category    CategoryRepository
	Mileage     MileageRepository
	Invoice     InvoiceRepository
	Contractor  ContractorRepository
	Company     CompanyRepository
}
