package booking

// transitions is the complete lifecycle table. Absent entries, including
// same-status "transitions", are invalid. Terminal states have no row.
var transitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusCancelled},
	StatusApproved: {StatusCancelled, StatusCompleted},
}

// CanTransition reports whether the lifecycle table permits from → to.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// authorizeTransition decides whether actor may move appt to the given
// status. It assumes the transition itself is already known to be legal.
// Admins bypass the ownership check but never the table.
func authorizeTransition(appt *Appointment, to Status, actor Actor) error {
	if actor.Role == RoleAdmin {
		return nil
	}
	switch to {
	case StatusApproved, StatusCompleted:
		if actor.ID == appt.OwnerID {
			return nil
		}
	case StatusCancelled:
		if actor.ID == appt.OwnerID || actor.ID == appt.RequesterID {
			return nil
		}
	}
	return ErrForbidden
}

// authorizeRemove: only the two parties, or an admin, may delete.
func authorizeRemove(appt *Appointment, actor Actor) error {
	if actor.Role == RoleAdmin || actor.ID == appt.OwnerID || actor.ID == appt.RequesterID {
		return nil
	}
	return ErrForbidden
}

// authorizeRead mirrors authorizeRemove: appointments are visible to their
// parties and to admins.
func authorizeRead(appt *Appointment, actor Actor) error {
	return authorizeRemove(appt, actor)
}
