package services

// ServiceContainer bundles all service interfaces for handler wiring.
type ServiceContainer struct {
	Transaction TransactionService
	Category    CategoryService
	Mileage     MileageService
	TaxReport   TaxReportService
	ScheduleC   ScheduleCService
	Invoice     InvoiceService
	Contractor  ContractorService
	Company     CompanyService
}
