package payments

import (
	"github.com/netline-isp/isp-console/internal/shared"
)

// snapshotKey holds the rows of the last list page shown in this session.
// The backend has no single-payment read, so the mark-paid form and the
// receipt work from the row the user clicked.
const snapshotKey = "payments.page"

func remember(sess *shared.Session, ps []Payment) error {
	if sess == nil {
		return nil
	}
	rows := make(map[string]Payment, len(ps))
	for _, p := range ps {
		rows[p.ID] = p
	}
	return sess.SetJSON(snapshotKey, rows)
}

func lookup(sess *shared.Session, id string) (Payment, bool) {
	if sess == nil {
		return Payment{}, false
	}
	var rows map[string]Payment
	if ok, err := sess.GetJSON(snapshotKey, &rows); err != nil || !ok {
		return Payment{}, false
	}
	p, ok := rows[id]
	return p, ok
}

func replace(sess *shared.Session, p Payment) error {
	if sess == nil {
		return nil
	}
	var rows map[string]Payment
	if ok, err := sess.GetJSON(snapshotKey, &rows); err != nil || !ok {
		return err
	}
	rows[p.ID] = p
	return sess.SetJSON(snapshotKey, rows)
}
