package repository

// Repos agrupa los repositorios atados a una misma conexión o transacción.
type Repos struct {
	Accounts       AccountRepository
	Users          UserRepository
	Roles          RoleRepository
	UserRoles      UserRoleRepository
	AccountRoles   AccountRoleRepository
	Contacts       ContactRepository
	UserComments   UserCommentRepository
	Properties     PropertyRepository
	PropertyImages PropertyImageRepository
	Listings       ListingRepository
	Prospects      ProspectRepository
	Leads          LeadRepository
	Appointments   AppointmentRepository
	Tasks          TaskRepository
	Documents      DocumentRepository
	Deals          DealRepository
	Comments       CommentRepository
	Carteles       CartelRepository
	Locations      LocationRepository
	Website        WebsiteConfigRepository
	Dashboard      DashboardRepository
}
