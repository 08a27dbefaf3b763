package internal

// dispatch runs the request pipeline up to the route handler: before
// filters first, then the method's route table in registration order.
// A halt anywhere short-circuits into result normalization; every other
// failure propagates to the recovery pipeline.
func (a *App) dispatch(c *requestContext) error {
	if err := a.runBeforeFilters(c); err != nil {
		if halt, ok := asHalt(err); ok {
			return a.normalize(c, halt.res, 0)
		}
		return err
	}
	return a.walkRoutes(c)
}

// runBeforeFilters runs every before filter in registration order. A
// pass ends the current filter and moves on to the next one; any other
// error stops the chain.
func (a *App) runBeforeFilters(c *requestContext) error {
	for _, f := range a.beforeFilters {
		if err := f(c); err != nil && !isPass(err) {
			return err
		}
	}
	return nil
}

// walkRoutes scans the method's route table for the first accepting
// route and invokes its handler. Captures and guard side effects are
// staged on a scratch parameter bag and committed only when the route
// is accepted, so rejected candidates leave no trace on the request.
func (a *App) walkRoutes(c *requestContext) error {
	path := c.Path()
	for _, rt := range a.routes[c.req.Method] {
		captures, ok := rt.pattern.match(path)
		if !ok {
			continue
		}

		saved := c.params
		scratch := saved.Clone()
		scratch.applyCaptures(rt.pattern.paramNames(), captures)
		c.params = scratch

		accepted, err := a.evalConditions(c, rt.conditions)
		if err != nil {
			if isPass(err) {
				c.params = saved
				continue
			}
			// A halt in a guard commits the route, staged params and all.
			if halt, ok := asHalt(err); ok {
				return a.normalize(c, halt.res, 0)
			}
			return err
		}
		if !accepted {
			c.params = saved
			continue
		}

		err = a.invoke(c, rt.handler)
		if isPass(err) {
			c.params = saved
			continue
		}
		return err
	}
	return ErrNotFound
}
