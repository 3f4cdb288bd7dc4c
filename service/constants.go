package service

const (
	MinLoanAmount = 5_000.0
	MaxLoanAmount = 200_000.0

	// Minimum CIBIL score to be eligible for a loan. Applicants with no
	// score on file yet are let through; the admin gate catches them.
	MinCibilScore = 650

	MinCibil = 300 // CIBIL scale bounds, for admin score updates
	MaxCibil = 900

	MaxPurposeLength = 500

	// Uploaded KYC scans are small images or PDFs.
	MaxDocumentBytes = 5 << 20
)

// AllowedTenures are the tenures offered on the apply form, in months.
var AllowedTenures = []int{6, 12, 18, 24}
