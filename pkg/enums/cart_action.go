package enums

// CartAction names a gated mutation on a cart. The per-action source-state
// allow-lists live with the state machine; this type only identifies actions.
type CartAction string

const (
	CartActionUpdateFreshCart CartAction = "updateFreshCart"
	CartActionSetProcessing   CartAction = "setProcessingCart"
	CartActionFinishCart      CartAction = "finishCart"
	CartActionFinishErrorCart CartAction = "finishErrorCart"
	CartActionDeleteCart      CartAction = "deleteCart"
	CartActionRestartCart     CartAction = "restartCart"
)

// String implements fmt.Stringer.
func (c CartAction) String() string {
	return string(c)
}
