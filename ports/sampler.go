package ports

// Distribution is a scalar probability distribution that can be sampled.
type Distribution interface {
	Rand() float64
}

// Sampler builds distributions that draw from a shared random source.
type Sampler interface {
	// Normal returns a normal distribution with mean mu and standard deviation sigma.
	Normal(mu, sigma float64) (Distribution, error)

	// Uniform returns a continuous uniform distribution on [min, max).
	Uniform(min, max float64) (Distribution, error)
}
