package entity

// Roles válidos en el token. La gestión de usuarios vive fuera de este servicio;
// aquí solo se usan para autorizar escrituras y como actor de auditoría.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleVendedor  = "vendedor"
)
