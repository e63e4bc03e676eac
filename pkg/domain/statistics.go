package domain

// StaffStatistics is the staff service's summary.
type StaffStatistics struct {
	TotalStudents     int            `json:"total_students"`
	TotalTeachers     int            `json:"total_teachers"`
	ActiveStudents    int            `json:"active_students"`
	ActiveTeachers    int            `json:"active_teachers"`
	StudentsByCourse  map[string]int `json:"students_by_course"`
	StudentsByFaculty map[string]int `json:"students_by_faculty"`
}

// EventStatistics is the events service's summary.
type EventStatistics struct {
	TotalEvents      int            `json:"total_events"`
	PublishedEvents  int            `json:"published_events"`
	CompletedEvents  int            `json:"completed_events"`
	EventsByCategory map[string]int `json:"events_by_category"`
}

// ApplicantStatistics is the admissions service's summary.
type ApplicantStatistics struct {
	TotalApplicants     int            `json:"total_applicants"`
	NewApplicants       int            `json:"new_applicants"`
	ContactedApplicants int            `json:"contacted_applicants"`
	EnrolledApplicants  int            `json:"enrolled_applicants"`
	RejectedApplicants  int            `json:"rejected_applicants"`
	ApplicantsByProgram map[string]int `json:"applicants_by_program"`
	ApplicantsBySource  map[string]int `json:"applicants_by_source"`
}

// CertificateStatistics is the certificates service's summary.
type CertificateStatistics struct {
	TotalCertificates      int            `json:"total_certificates"`
	PendingCertificates    int            `json:"pending_certificates"`
	ProcessingCertificates int            `json:"processing_certificates"`
	ReadyCertificates      int            `json:"ready_certificates"`
	IssuedCertificates     int            `json:"issued_certificates"`
	CancelledCertificates  int            `json:"cancelled_certificates"`
	CertificatesByType     map[string]int `json:"certificates_by_type"`
	TotalRevenue           float64        `json:"total_revenue"`
}

// LibraryStatistics is the library service's summary.
type LibraryStatistics struct {
	TotalBooks      int            `json:"total_books"`
	TotalCopies     int            `json:"total_copies"`
	AvailableCopies int            `json:"available_copies"`
	BooksByCategory map[string]int `json:"books_by_category"`
}
