package cmd

import (
	"fmt"

	"github.com/sagarsuraksha/hz/internal/session"
)

// requireSubmitter gates report submission on the citizen role. An
// unauthorized caller gets pointed at the right login instead of a crash.
func requireSubmitter(env *Env) (*session.Session, error) {
	sess, err := env.Sessions.Current()
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, fmt.Errorf("not logged in: run 'hz login --name <you> --role citizen' to submit reports")
	}
	if !session.CanSubmit(sess.Role) {
		return nil, fmt.Errorf("role %q cannot submit reports: log in as a citizen (hz login --role citizen)", sess.Role)
	}
	return sess, nil
}

// requireReviewer gates triage and review surfaces on the admin role.
func requireReviewer(env *Env) (*session.Session, error) {
	sess, err := env.Sessions.Current()
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, fmt.Errorf("not logged in: run 'hz login --name <you> --role admin' to review reports")
	}
	if !session.CanTriage(sess.Role) {
		return nil, fmt.Errorf("role %q cannot review reports: log in as an admin (hz login --role admin)", sess.Role)
	}
	return sess, nil
}
