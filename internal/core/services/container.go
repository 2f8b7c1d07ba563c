package services

import (
	portsrepo "github.com/flightdeck-io/droneledger/internal/core/ports/repositories"
	portssvc "github.com/flightdeck-io/droneledger/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// NewServiceContainer wires every service with its repository and service
// dependencies. defaultMileageRate is the configured last-resort per-mile
// rate.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, defaultMileageRate decimal.Decimal) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Company first: invoices and 1099 summaries read the active profile.
	container.Company = NewCompanyService(repos.Company)

	container.Transaction = NewTransactionService(repos.Transaction, repos.Category)
	container.Category = NewCategoryService(repos.Category)
	container.Mileage = NewMileageService(repos.Mileage, defaultMileageRate)
	container.TaxReport = NewTaxReportService(repos.Transaction)
	container.ScheduleC = NewScheduleCService(repos.Transaction, repos.Mileage, container.Mileage, container.TaxReport)
	container.Invoice = NewInvoiceService(repos.Invoice, repos.Transaction, repos.Category, repos.Mileage, container.Mileage, container.Company)
	container.Contractor = NewContractorService(repos.Contractor, repos.Transaction, container.Company)

	return container
}
