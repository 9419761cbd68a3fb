package experiment

// AnalyticBias is the probability limit of (naive x-coefficient - beta) when
// v is omitted from the regression of y on x:
//
//	alphaY*alphaX*sigmaA^2 / (alphaX^2*sigmaA^2 + sigmaEx^2)
//
// It depends on the structural parameters only, never on a simulated draw.
func AnalyticBias(alphaY, alphaX, sigmaA, sigmaEx float64) float64 {
	varA := sigmaA * sigmaA
	return (alphaY * alphaX * varA) / (alphaX*alphaX*varA + sigmaEx*sigmaEx)
}
