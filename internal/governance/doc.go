// Package governance routes DAO-gated calls through WeteeSudo or WeteeGov.
//
// Run type 1 wraps the call in WeteeSudo.sudo so the DAO's sudo account
// dispatches it. Run type 2 wraps it in WeteeGov.create_propose, opening a
// proposal voted on by the given MemberData scope with Amount as deposit.
package governance
