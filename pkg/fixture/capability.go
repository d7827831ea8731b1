package fixture

// Capability is one unit of per-test setup/teardown logic. Capabilities are
// independently instantiable and composed into a TestContext in declaration
// order; TearDown runs through the cleanup registry in reverse setup order.
type Capability interface {
	Name() string
	SetUp(tc *TestContext) error
	TearDown(tc *TestContext) error
}
