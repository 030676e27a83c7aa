package services

const (
	answerWheatPlanting = `Best time for wheat planting:
- Rabi season: October to December is ideal.
- Soil temperature: 10-15°C.
- Soil moisture: make sure the field holds enough moisture.
- Seed rate: 100-125 kg per hectare.
Sow after the monsoon, when the soil still has good moisture. Ask for variety recommendations for your region if you need them.`

	answerOrganicPestControl = `Organic pest control methods:
- Neem oil as a natural insecticide.
- Companion planting with marigold or basil.
- Beneficial insects such as ladybugs and lacewings.
- Soap spray for soft-bodied insects.
- Crop rotation to break pest cycles.
Tip: mix neem oil with water at 1:10 and spray in the evening.`

	answerTomatoFertilizer = `Tomato fertilizer guide:
- Seedling (0-3 weeks): low NPK 5-10-5, weekly and diluted.
- Vegetative (3-8 weeks): higher nitrogen 10-5-5, every 2 weeks.
- Flowering and fruiting: balanced 10-10-10, add calcium to prevent blossom end rot.
Organic options: compost, fish emulsion, bone meal.`

	answerCropRotation = `Crop rotation benefits:
- Soil health: prevents nutrient depletion, improves structure, adds organic matter.
- Pest and disease control: breaks pest life cycles and reduces soil-borne disease.
- Yield: better nutrient use, more crop diversity, higher long-term productivity.
Example cycle: legumes, then cereals, then root crops, then fallow.`

	answerWeatherImpact = `Weather impact on crops:
- Temperature regulates growth rate, flowering time and fruit development.
- Rainfall drives water stress, disease pressure and nutrient leaching.
- Humidity affects disease development, pollination and pest activity.
Tip: turn on weather alerts to plan field work and protect your crops.`

	answerSoilPH = `Soil pH management:
- Most crops do best at pH 6.0-7.0.
- To raise pH (less acidic): add lime, wood ash or crushed eggshells.
- To lower pH (more acidic): add sulfur, peat moss or aluminum sulfate.
Test soil pH every 2-3 years.`

	answerNPK = `NPK nutrient guide:
- Nitrogen (N): leaf growth, protein synthesis, chlorophyll.
- Phosphorus (P): root development, flowering and fruit formation.
- Potassium (K): disease resistance, water regulation, overall plant health.
Balance matters: too much of any nutrient can harm the crop.`

	answerOrganicFarming = `Organic farming benefits:
- Environment: no chemical residues, healthier soil, more biodiversity.
- Economics: premium prices and lower input costs over time.
- Health: safer for farmers and consumers, no synthetic pesticides.
Consider organic certification for better market access.`

	answerIrrigation = `Smart irrigation tips:
- Water early morning (6-8 AM) or evening (6-8 PM); avoid midday.
- Drip irrigation is the most efficient, sprinklers give uniform coverage, flood irrigation suits rice.
- Mulching reduces evaporation; monitor soil moisture and harvest rainwater.
Drip irrigation can save 30-50% water.`

	answerHelp = `I can help with:
- Crop planning and planting
- Pest and disease management
- Fertilizer recommendations
- Weather-related advice
- Soil management
- Organic farming methods
- Market price information
Ask me anything about farming.`

	answerGreeting = `Hello, farmer friend! I'm here to help with your questions about crops, soil, weather or farming techniques. What would you like to know today?`

	answerThanks = `You're very welcome! If you have more questions about your crops or farming practices, just ask. Happy farming!`

	answerDefault = `I understand you're asking about farming, but I don't have specific information on that topic right now.
I can help with crop management, pest control, fertilizers and nutrition, soil management, weather planning and organic farming.
Try asking: "How do I improve soil health?" or "Best fertilizer for vegetables?"`
)
